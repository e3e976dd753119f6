package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calumari/dtogen/internal/document"
	"github.com/calumari/dtogen/internal/generator"
)

const orderSrc = `package com.acme;

public class OrderService {
    public void print(Order order) {
        Order current = order;
    }
}

class Order {
    public int getId() { return 0; }
    public boolean isPaid() { return false; }
}
`

const userSrc = `package com.acme;

@lombok.Builder
public class UserDto {
    private String name;
    private int age;
}

class Factory {
    UserDto make() {
        UserDto dto;
        return dto;
    }
}
`

const addressSrc = `class Factory {
    void make() {
        Address.bu
    }
}

class Address {
    public static AddressBuilder builder() { return new AddressBuilder(); }

    public static class AddressBuilder {
        public AddressBuilder street(String street) { return this; }
        public Address build() { return new Address(); }
    }
}
`

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGetters(t *testing.T) {
	t.Run("prints the edited file", func(t *testing.T) {
		path := writeSource(t, "OrderService.java", orderSrc)
		stdout, stderr, err := run(t, "getters", "-f", path, "--line", "5", "--col", "17")
		require.NoError(t, err)
		assert.Contains(t, stdout, "        Order current = order;\n        int id = current.getId();\n        boolean paid = current.isPaid();\n    }")
		assert.Contains(t, stderr, "allGetters")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, orderSrc, string(data), "file untouched without -w")
	})

	t.Run("writes in place", func(t *testing.T) {
		path := writeSource(t, "OrderService.java", orderSrc)
		stdout, _, err := run(t, "getters", "-f", path, "--line", "5", "--col", "17", "-w")
		require.NoError(t, err)
		assert.Empty(t, stdout)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "int id = current.getId();")
	})

	t.Run("caret on nothing", func(t *testing.T) {
		path := writeSource(t, "OrderService.java", orderSrc)
		_, _, err := run(t, "getters", "-f", path, "--offset", "0")
		require.ErrorIs(t, err, generator.ErrNotApplicable)
	})

	t.Run("caret out of range", func(t *testing.T) {
		path := writeSource(t, "OrderService.java", orderSrc)
		_, _, err := run(t, "getters", "-f", path, "--line", "99", "--col", "1")
		require.ErrorIs(t, err, document.ErrOutOfRange)

		_, _, err = run(t, "getters", "-f", path, "--offset", "100000")
		require.ErrorIs(t, err, document.ErrOutOfRange)
	})

	t.Run("flags", func(t *testing.T) {
		path := writeSource(t, "OrderService.java", orderSrc)
		_, _, err := run(t, "getters", "--offset", "10")
		require.Error(t, err, "file is required")

		_, _, err = run(t, "getters", "-f", path)
		require.Error(t, err, "a caret is required")

		_, _, err = run(t, "getters", "-f", path, "--offset", "1", "--line", "1", "--col", "1")
		require.Error(t, err)
	})

	t.Run("unparseable file", func(t *testing.T) {
		path := writeSource(t, "Broken.java", "class {")
		_, _, err := run(t, "getters", "-f", path, "--offset", "0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})
}

func TestBuilder(t *testing.T) {
	path := writeSource(t, "UserDto.java", userSrc)
	stdout, _, err := run(t, "builder", "-f", path, "--line", "11", "--col", "16")
	require.NoError(t, err)
	assert.Contains(t, stdout, "        UserDto dto;\n        UserDto.builder()\n            .name(null)\n            .age(null)\n            .build();\n        return dto;")
}

func TestBuilderConfig(t *testing.T) {
	path := writeSource(t, "UserDto.java", userSrc)
	cfg := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("continuation_indent = \"  \"\n"), 0o644))

	stdout, _, err := run(t, "builder", "-f", path, "--line", "11", "--col", "16", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "        UserDto.builder()\n          .name(null)\n")

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("indent = 2\n"), 0o644))
	_, _, err = run(t, "builder", "-f", path, "--offset", "0", "--config", bad)
	require.Error(t, err)
}

func TestComplete(t *testing.T) {
	path := writeSource(t, "Factory.java", addressSrc)

	t.Run("lists items", func(t *testing.T) {
		stdout, _, err := run(t, "complete", "-f", path, "--line", "3", "--col", "19")
		require.NoError(t, err)
		assert.Equal(t, "builderChain\tGenerate builder chain\n", stdout)
	})

	t.Run("accepts an item", func(t *testing.T) {
		stdout, _, err := run(t, "complete", "-f", path, "--line", "3", "--col", "19", "--item", "builderChain")
		require.NoError(t, err)
		assert.Contains(t, stdout, "        Address address = Address.builder()\n            .street(\"\")\n            .build();\n    }")
	})

	t.Run("snippet", func(t *testing.T) {
		stdout, _, err := run(t, "complete", "-f", path, "--line", "3", "--col", "19", "--item", "builderChain", "--snippet")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Address ${1:address} = Address.builder()")
		assert.Contains(t, stdout, ".street(${2:\"\"})")
	})

	t.Run("item not offered", func(t *testing.T) {
		_, _, err := run(t, "complete", "-f", path, "--line", "3", "--col", "19", "--item", "allGetters")
		require.ErrorIs(t, err, generator.ErrNotApplicable)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, _, err := run(t, "complete", "-f", path, "--line", "3", "--col", "19", "--item", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown item")
	})

	t.Run("no qualifier", func(t *testing.T) {
		_, _, err := run(t, "complete", "-f", path, "--offset", "0")
		require.ErrorIs(t, err, errNoQualifier)
	})
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dtogen test\n", stdout)
}

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := newReporter(&buf)
	r.failure(generator.ErrNotApplicable)
	assert.Contains(t, buf.String(), "error: not applicable")
	assert.Contains(t, buf.String(), "hint:")

	buf.Reset()
	r.warning("%s: nothing to generate", "allGetters")
	assert.Contains(t, buf.String(), "allGetters: nothing to generate")
}

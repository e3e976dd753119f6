package javasrc

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar only models declarations. Method bodies, initializers and
// annotation arguments are matched as balanced token runs and skipped; the
// locator works on the raw token stream for anything inside them.

var javaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "TextBlock", Pattern: `"""[\s\S]*?"""`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(?:\\.|[^'\\\n])+'`},
	{Name: "AtInterface", Pattern: `@\s*interface\b`},
	{Name: "Number", Pattern: `(?:0[xX][0-9a-fA-F_]+|[0-9][0-9_]*(?:\.[0-9_]*)?(?:[eE][+-]?[0-9]+)?|\.[0-9][0-9_]*(?:[eE][+-]?[0-9]+)?)[lLfFdD]?`},
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Punct", Pattern: `[-+*/%&|^!~?:;,.=<>(){}\[\]@\\#]`},
})

var javaParser = participle.MustBuild[compilationUnit](
	participle.Lexer(javaLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(64),
)

type compilationUnit struct {
	Package *packageDecl  `@@?`
	Imports []*importDecl `@@*`
	Types   []*typeDecl   `( @@ | ";" )*`
}

type packageDecl struct {
	Name []string `"package" @Ident ( "." @Ident )* ";"`
}

type importDecl struct {
	Static bool     `"import" @"static"?`
	Path   []string `@Ident ( "." @( Ident | "*" ) )* ";"`
}

type ident struct {
	Pos  lexer.Position
	Name string `@Ident`
}

type annotation struct {
	Name []string `"@" @Ident ( "." @Ident )*`
	Args *parens  `@@?`
}

type modifier struct {
	Annotation *annotation `  @@`
	Keyword    string      `| @( "public" | "protected" | "private" | "static" | "final" | "abstract" | "synchronized" | "native" | "transient" | "volatile" | "strictfp" | "default" | "sealed" ) | @( "non" "-" "sealed" )`
}

type parens struct {
	Nested []*parens `"(" ( @@ | ~( "(" | ")" ) )* ")"`
}

type block struct {
	Nested []*block `"{" ( @@ | ~( "{" | "}" ) )* "}"`
}

type typeRef struct {
	Name []string  `@Ident ( "." @Ident )*`
	Args *typeArgs `@@?`
	Dims []string  `( @"[" "]" )*`
}

// typeArgs also matches the diamond `<>`.
type typeArgs struct {
	Args []*typeArg `"<" ( @@ ( "," @@ )* )? ">"`
}

type typeArg struct {
	Wildcard *wildcard `  @@`
	Type     *typeRef  `| @@`
}

type wildcard struct {
	Mark  string         `@"?"`
	Bound *wildcardBound `@@?`
}

type wildcardBound struct {
	Kind string   `@( "extends" | "super" )`
	Type *typeRef `@@`
}

type typeParams struct {
	Params []*typeParam `"<" @@ ( "," @@ )* ">"`
}

type typeParam struct {
	Annotations []*annotation `@@*`
	Name        string        `@Ident`
	Bounds      []*typeRef    `( "extends" @@ ( "&" @@ )* )?`
}

type typeDecl struct {
	Modifiers []*modifier `@@*`
	Body      *typeBody   `@@`
}

type typeBody struct {
	Class *classDecl `  @@`
	Enum  *enumDecl  `| @@`
}

type classDecl struct {
	Kind       string      `@( "class" | "interface" | "record" | AtInterface )`
	Name       *ident      `@@`
	TypeParams *typeParams `@@?`
	Header     *paramList  `@@?`
	Extends    []*typeRef  `( "extends" @@ ( "," @@ )* )?`
	Implements []*typeRef  `( "implements" @@ ( "," @@ )* )?`
	Permits    []*typeRef  `( "permits" @@ ( "," @@ )* )?`
	Members    []*member   `"{" ( @@ | ";" )* "}"`
}

type enumDecl struct {
	Name       *ident          `"enum" @@`
	Implements []*typeRef      `( "implements" @@ ( "," @@ )* )?`
	Constants  []*enumConstant `"{" ( @@ ( "," @@ )* )? ","?`
	Members    []*member       `( ";" ( @@ | ";" )* )? "}"`
}

type enumConstant struct {
	Annotations []*annotation `@@*`
	Name        *ident        `@@`
	Args        *parens       `@@?`
	Body        *block        `@@?`
}

type member struct {
	Modifiers []*modifier `@@*`
	Decl      *memberDecl `@@`
}

type memberDecl struct {
	Type        *typeBody    `  @@`
	Initializer *block       `| @@`
	Constructor *constructor `| @@`
	Compact     *compactCtor `| @@`
	Typed       *typedMember `| @@`
}

// compactCtor is a record's canonical constructor without parameter list.
type compactCtor struct {
	Name *ident `@@`
	Body *block `@@`
}

type constructor struct {
	TypeParams *typeParams `@@?`
	Name       *ident      `@@`
	Params     *paramList  `@@`
	Throws     []*typeRef  `( "throws" @@ ( "," @@ )* )?`
	Body       *block      `@@`
}

// typedMember is a method or a field; both start with `Type name`.
type typedMember struct {
	TypeParams *typeParams `@@?`
	Type       *typeRef    `@@`
	Name       *ident      `@@`
	Rest       *memberRest `@@`
}

type memberRest struct {
	Method *methodRest `  @@`
	Field  *fieldRest  `| @@`
}

type methodRest struct {
	Params  *paramList `@@`
	Dims    []string   `( @"[" "]" )*`
	Throws  []*typeRef `( "throws" @@ ( "," @@ )* )?`
	Default *skipped   `( "default" @@ )?`
	Body    *block     `( @@ | ";" )`
}

// fieldRest accepts a missing ";" so that a half-typed initializer right
// before the closing brace still parses.
type fieldRest struct {
	Dims []string      `( @"[" "]" )*`
	Init *skipped      `( "=" @@ )?`
	More []*declarator `( "," @@ )* ";"?`
}

type declarator struct {
	Name *ident   `@@`
	Dims []string `( @"[" "]" )*`
	Init *skipped `( "=" @@ )?`
}

// skipped is an expression we do not model: a run of tokens up to the next
// ';' with braces and parens balanced.
type skipped struct {
	Items []*skippedItem `@@+`
}

type skippedItem struct {
	Parens *parens `  @@`
	Block  *block  `| @@`
	Token  string  `| @~( ";" | "(" | ")" | "{" | "}" )`
}

type paramList struct {
	Params []*param `"(" ( @@ ( "," @@ )* )? ")"`
}

type param struct {
	Modifiers []*modifier `@@*`
	Type      *typeRef    `@@`
	Varargs   bool        `@Ellipsis?`
	Name      *ident      `@@`
	Dims      []string    `( @"[" "]" )*`
}

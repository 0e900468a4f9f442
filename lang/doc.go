// Package lang is the front end of a make-file compiler. It turns make-style
// source text into resolved variable bindings and fully lowered build rules,
// ready for a scheduler to order and execute.
//
// # Pipeline
//
// Compilation runs in five stages. Each stage either returns a complete,
// valid product or an error that ends compilation:
//
//  1. [Lex] turns the source buffer into tokens annotated with line and column.
//  2. [Parse] builds variable definitions and rules from the tokens.
//  3. [Resolve] expands the definitions into an immutable [Env].
//  4. [Substitute] replaces ordinary variable references in each rule.
//  5. [BindAutoVars] binds $@, $< and $^ per rule and flattens the recipe.
//
// [Compile] runs all five and returns every intermediate product.
//
// # Grammar
//
// Informal EBNF over tokens:
//
//	File        → (LineEnd | VarDef | Rule)* EOF
//	VarDef      → Word Assign (Word | VarRef)* (LineEnd | EOF)
//	Rule        → Name+ Colon Name* (LineEnd | EOF) RecipeLine*
//	Name        → Word | VarRef
//	RecipeLine  → LineEnd* Indent+ Item* (LineEnd | EOF)
//	Item        → Word | VarRef | AutoVarRef | QuotedString
//
// Lexically:
//
//	Word          run of letters, digits and _ . % / - , @ '
//	VarRef        $X | $(NAME)
//	AutoVarRef    $@ | $< | $^
//	QuotedString  "..." with escapes \" \' \\ \# \n \r \t and embedded refs
//	Assign        = | :=
//	Indent        tab
//	LineEnd       \n | \r\n
//
// Spaces and '#' comments separate tokens. Every tab is an Indent, so a tab
// between words on a rule or definition line is a parse error. A backslash before a line end continues the logical line.
//
// # Example
//
//	CC = gcc
//	CFLAGS = -O2 -I$(INC)
//	INC = include
//
//	app: main.o util.o
//		$(CC) $(CFLAGS) -o $@ $^
//
// lowers to the rule app: main.o util.o with the recipe line
//
//	gcc -O2 -Iinclude -o app main.o util.o
package lang

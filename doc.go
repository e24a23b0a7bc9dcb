/*
Package gexpr is an embeddable expression toolbox.

GExpr turns raw text into a typed, operator-erased computation and executes
it. Clients provide the lexical rules, a grammar of groupings and operators
(with precedence and associativity) and a jump table of operator
implementations. The engine is a small compiler front end plus a stack
machine: no syntax trees are built, expressions are compiled to postfix
programs. Package structure is as follows:

■ node: Package node implements type-erased values (expression nodes).

■ lexer: Package lexer provides a token stream and pluggable token recognizers.

■ grammar: Package grammar declares groupings and operators of an expression language.

■ compiler: Package compiler turns token lists into postfix programs.

■ eval: Package eval provides operator jump tables and a postfix evaluator.

■ lang: Sub-packages of lang are small domain languages built on top of the engine:
an arithmetic calculator, a unit-aware evaluator, string templates, a text filter
query language and dotted reflection paths.

The base package contains data types which are used throughout all the other packages,
i.e. source spans and the error taxonomy.

The pipeline is

    text ⟶ lexer.Lex ⟶ tokens ⟶ compiler.Compile ⟶ program ⟶ eval.Evaluate ⟶ node

A failing stage short-circuits the pipeline. Errors are of type *LexError,
*CompileError or *EvalError and wrap one of the sentinel errors of this package,
thus clients may test them with errors.Is.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gexpr

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package realtree

// Banner is printed when an interactive session starts.
const Banner = "RealCalc expression evaluator, type ^D to exit, help for help"

// HelpText is printed by the help command.
const HelpText = `realtree: there are 26 slots named 'a' .. 'z'. Names are case insensitive,
and expressions may reference literals or slots. Slots are either empty or
hold an expression tree; a literal is the simplest tree.
Commands are separated by newlines or by semicolons ';'. Valid commands:
    > help              print this notice
    > exit              end the session (^D works as well)
    > print             list every assigned slot with its value
    > reset             empty all slots
    > eval expression   evaluate the expression
    > eval x            evaluate the tree stored in slot x
    > x = expression    store the expression tree in slot x
Operators: + - * / % and unary -, with parentheses for grouping.
`

// ExitMessage is written to the error output when exit is executed.
const ExitMessage = "realtree will exit"

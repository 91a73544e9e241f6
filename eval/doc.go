// Package eval evaluates expr-lang expressions over kJSON trees.
//
// Expressions see a tree in the plain Go projection of ir.ToAny:
// Numbers are float64, BigInts *big.Int, Decimals *apd.Decimal,
// Instants time.Time and Durations ir.Duration. Results are converted
// back with ir.FromAny.
//
// Besides the expr-lang builtins, expressions may call
//
//	decimal(x) bigint(x) tofloat(x)   numeric conversions
//	dadd dsub dmul dquo dcmp          decimal arithmetic (34 digits)
//	tovalue(s) kjson(x)               parse and stringify kJSON text
//	isoduration(s) uuid4() uuid7()    extended type constructors
//	getenv(name) exec(script)         process environment
//	whereami() getkpath(kp) listkpath(kp)   navigation of the evaluated tree
//
// and functions added with Register.
//
// # Related Packages
//
//   - github.com/expr-lang/expr - the expression language
//   - github.com/signadot/kjson-format/kjson/ir - tree and Go projection
package eval

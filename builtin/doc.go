// Package builtin provides the standard namespaces of host functions that AMS
// source can call.
//
// Register them with an executor and read a member to apply it to the next
// word of the sentence:
//
//	exec := lang.NewPlainTextExecutor()
//	exec.AddNamespaces(builtin.Namespaces())
//
//	\ams.text.upper:{hello}         // HELLO
//	\ams.expr.eval:{1 + 2}          // 3
//	\ams.path.prefix:{\p:;/opt/bin} // /opt/bin followed by the items of \p
//
// The members of [lang.GrammarNamespace] are imported in every scope and can
// be called without qualification.
package builtin

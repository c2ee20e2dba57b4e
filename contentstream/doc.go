// Package contentstream tokenizes PDF content streams into operations.
//
// A content stream is a postfix program: operands are pushed until an
// operator consumes them.
//
//	ops, diags := contentstream.NewParser(data).Parse()
//	for _, op := range ops {
//	    if op.Op == contentstream.OpShowText { ... }
//	}
//
// Operators are classified into the closed [Op] enumeration; anything not
// listed maps to [OpUnknown] and is kept so callers can ignore it.
//
// Parsing never fails. Malformed input is skipped token by token and each
// recovery is returned as a diagnostic. A literal string whose closing
// parenthesis is missing is cut at the end of its line and shown as
// truncated text, after which tokenizing resumes.
package contentstream

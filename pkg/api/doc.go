// Package api exposes the validator over HTTP.
//
// The router is built with chi and serves three endpoints:
//
//	POST /validate   validate a field map against a rule map
//	GET  /rules      list the registered rules and bundled languages
//	GET  /healthz    report whether the translations load
//
// /validate accepts a JSON body
//
//	{
//	  "fields":  {"age": 17, "email": "a@example.com"},
//	  "rules":   {"age": "integer|min:18", "email": "required|email"},
//	  "strict":  true,
//	  "objects": {"avatar": "uploads/42/avatar.png"}
//	}
//
// or a multipart form whose "rules" value holds the rule map as JSON. Other
// form values become string fields and uploaded files are visible to the file
// rules. "objects" maps fields to S3 object keys and needs a handler built
// with WithObjectStore.
//
// The message language comes from the "lang" query parameter, then from
// Accept-Language, then from the handler default.
//
// Answers are 200 when the data passes, 422 with the failures when it does
// not, and 400 for a malformed request or a broken rule configuration.
package api

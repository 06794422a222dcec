// Package submission describes what a filled-in form posts back and checks
// payloads against it.
//
// Schema derives an OpenAPI 3 object schema from a field sequence, keyed by
// field id. Validate runs a payload through that schema and reports problems
// per field id, falling back to form-level messages when an error cannot be
// attributed to a field. MapErrors applies the same attribution to error
// payloads produced elsewhere (for example by a server keyed on JSON
// pointers).
package submission

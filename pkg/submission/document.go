package submission

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// SubmitPath is the templated path submissions are posted to.
const SubmitPath = "/f/{formId}"

// Document describes the submit endpoint of a form as an OpenAPI 3 document
// with a single POST operation.
func Document(doc formdoc.Document) *openapi3.T {
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = doc.ID
	}

	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithDescription(fmt.Sprintf("Answers to %q keyed by field id", title)).
		WithJSONSchema(Schema(doc.Fields))

	op := &openapi3.Operation{
		OperationID: OperationID(doc.ID),
		Summary:     "Submit " + title,
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewPathParameter("formId").WithSchema(openapi3.NewStringSchema().WithEnum(doc.ID))},
		},
		RequestBody: &openapi3.RequestBodyRef{Value: body},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(204, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Submission accepted"),
			}),
			openapi3.WithStatus(422, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Submission rejected; errors keyed by field id"),
			}),
		),
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(SubmitPath, &openapi3.PathItem{Post: op})),
	}
}

// OperationID returns the operation id used for a form's submit operation.
func OperationID(formID string) string {
	return "submit:" + formID
}

// Package prompt fills in a form from the terminal. A Runner walks the form
// page by page, asks for each input field according to its subtype, and
// checks answers with the submission schema before moving on.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/pages"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

// Navigation choices offered between pages.
const (
	ActionNext     = "Next page"
	ActionPrevious = "Previous page"
	ActionSubmit   = "Submit"
)

// Runner collects answers for a form.
type Runner struct {
	driver  PromptDriver
	logger  *zap.Logger
	prefill map[string]any
}

// New constructs a Runner. Without WithPromptDriver it prompts on the process
// terminal through survey.
func New(opts ...Option) *Runner {
	r := &Runner{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Run prompts for every page of doc and returns the answers keyed by field
// id. Unanswered optional fields are left out. The submission is checked as a
// whole before returning; on failure the runner reports the problems and
// returns to the page holding the first failing field. Problems not tied to a
// field end the run with an error wrapping submission.ErrInvalidSubmission.
func (r *Runner) Run(ctx context.Context, doc formdoc.Document) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	values := make(map[string]any, len(r.prefill))
	for id, v := range r.prefill {
		values[id] = v
	}

	nav := pages.NewNavigator(doc.Fields)
	if nav.Count() == 0 {
		return values, nil
	}
	if title := strings.TrimSpace(doc.Title); title != "" {
		if err := r.driver.Info(ctx, title); err != nil {
			return nil, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if nav.Count() > 1 {
			header := fmt.Sprintf("Page %d of %d", nav.Index()+1, nav.Count())
			if err := r.driver.Info(ctx, header); err != nil {
				return nil, err
			}
		}
		r.logger.Debug("page shown",
			zap.String("form", doc.ID),
			zap.Int("page", nav.Index()),
			zap.Int("pages", nav.Count()),
		)

		for _, f := range nav.Current() {
			if err := r.promptField(ctx, f, values); err != nil {
				return nil, err
			}
		}

		action, err := r.chooseAction(ctx, nav)
		if err != nil {
			return nil, err
		}
		switch action {
		case ActionNext:
			nav.Next()
			continue
		case ActionPrevious:
			nav.Previous()
			continue
		}

		result := submission.Validate(doc.Fields, values)
		if result.Valid() {
			r.logger.Info("submission collected", zap.String("form", doc.ID), zap.Int("answers", len(values)))
			return values, nil
		}
		r.logger.Debug("submission rejected", zap.String("form", doc.ID), zap.Error(result.Err()))
		if err := r.report(ctx, doc.Fields, result); err != nil {
			return nil, err
		}
		id := firstFailing(doc.Fields, result)
		if id == "" {
			// Form level problems cannot be fixed by asking again.
			return nil, result.Err()
		}
		if page, ok := pages.PageOf(doc.Fields, id); ok {
			nav.Seek(page)
		}
	}
}

func (r *Runner) chooseAction(ctx context.Context, nav *pages.Navigator) (string, error) {
	var actions []string
	if nav.IsLastPage() {
		actions = append(actions, ActionSubmit)
	} else {
		actions = append(actions, ActionNext)
	}
	if !nav.IsFirstPage() {
		actions = append(actions, ActionPrevious)
	}
	if len(actions) == 1 {
		return actions[0], nil
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Continue", Options: actions, DefaultIndex: 0})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return actions[0], nil
	}
	return actions[idx], nil
}

func (r *Runner) report(ctx context.Context, seq field.Sequence, result submission.Result) error {
	for _, f := range seq {
		for _, msg := range result.For(f.ID) {
			if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", fieldName(f), msg)); err != nil {
				return err
			}
		}
	}
	for _, msg := range result.Form {
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, f field.Field, values map[string]any) error {
	switch f.Subtype {
	case field.SubtypePage:
		return nil
	case field.SubtypeHeading:
		return r.driver.Info(ctx, headingText(f))
	case field.SubtypeNumber:
		return r.promptNumber(ctx, f, values)
	case field.SubtypeRating:
		return r.promptRating(ctx, f, values)
	case field.SubtypeSingleChoice, field.SubtypeDropdown:
		return r.promptChoice(ctx, f, values)
	case field.SubtypeMultipleChoice:
		return r.promptMultiChoice(ctx, f, values)
	case field.SubtypeLongAnswer:
		return r.promptText(ctx, f, values, true)
	case field.SubtypeShortAnswer, field.SubtypeName, field.SubtypeAddress, field.SubtypeWebsite,
		field.SubtypeEmail, field.SubtypePhone, field.SubtypeDate, field.SubtypeFileUpload:
		return r.promptText(ctx, f, values, false)
	default:
		r.logger.Warn("field skipped", zap.String("field", f.ID), zap.String("subtype", string(f.Subtype)))
		return nil
	}
}

func (r *Runner) promptText(ctx context.Context, f field.Field, values map[string]any, multiline bool) error {
	label := displayLabel(f)
	name := fieldName(f)
	def, _ := values[f.ID].(string)

	for {
		var response string
		var err error
		if multiline {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: def, Help: helpText(f)})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{Message: label, Default: def, Help: helpText(f)})
		}
		if err != nil {
			return err
		}

		response = strings.TrimSpace(response)
		if err := check(f, response); err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", name, err))
			continue
		}
		setAnswer(values, f.ID, response)
		return nil
	}
}

func (r *Runner) promptNumber(ctx context.Context, f field.Field, values map[string]any) error {
	label := displayLabel(f)
	name := fieldName(f)
	def := ""
	if v, ok := values[f.ID]; ok && v != nil {
		def = fmt.Sprint(v)
	}

	for {
		input, err := r.driver.Input(ctx, InputConfig{Message: label, Default: def, Help: helpText(f)})
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			if err := check(f, nil); err != nil {
				_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", name, err))
				continue
			}
			delete(values, f.ID)
			return nil
		}
		parsed, err := strconv.ParseFloat(input, 64)
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: not a number", name))
			continue
		}
		values[f.ID] = parsed
		return nil
	}
}

func (r *Runner) promptRating(ctx context.Context, f field.Field, values map[string]any) error {
	count := f.RatingCount
	if count <= 0 {
		count = field.DefaultRatingCount
	}
	options := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		options = append(options, strconv.Itoa(i))
	}
	def := -1
	if v, ok := values[f.ID]; ok {
		def = choices(options).index(fmt.Sprint(v))
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: displayLabel(f), Options: options, DefaultIndex: def, Help: helpText(f)})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		delete(values, f.ID)
		return nil
	}
	values[f.ID] = idx + 1
	return nil
}

func (r *Runner) promptChoice(ctx context.Context, f field.Field, values map[string]any) error {
	opts, err := choicesOf(f)
	if err != nil || len(opts) == 0 {
		return err
	}
	def := -1
	if v, ok := values[f.ID].(string); ok {
		def = opts.index(v)
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{Message: displayLabel(f), Options: opts, DefaultIndex: def, Help: helpText(f)})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(opts) {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", fieldName(f)))
			continue
		}
		values[f.ID] = opts[idx]
		return nil
	}
}

func (r *Runner) promptMultiChoice(ctx context.Context, f field.Field, values map[string]any) error {
	opts, err := choicesOf(f)
	if err != nil || len(opts) == 0 {
		return err
	}
	defaults := opts.indices(values[f.ID])

	for {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{Message: displayLabel(f), Options: opts, Defaults: defaults, Help: helpText(f)})
		if err != nil {
			return err
		}
		selected := opts.pick(indices)
		if err := check(f, toAnySlice(selected)); err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", fieldName(f), err))
			continue
		}
		if len(selected) == 0 {
			delete(values, f.ID)
			return nil
		}
		values[f.ID] = selected
		return nil
	}
}

// choices holds the option values of a choice field in display order.
type choices []string

// choicesOf lists the options of f. A required field without options can
// never be answered, so it is reported instead of skipped.
func choicesOf(f field.Field) (choices, error) {
	out := make(choices, 0, len(f.Options))
	for _, opt := range f.Options {
		out = append(out, opt.Value)
	}
	if len(out) == 0 && f.Required {
		return nil, fmt.Errorf("%w: %q", ErrNoOptions, f.ID)
	}
	return out, nil
}

func (c choices) index(value string) int {
	for i, v := range c {
		if v == value {
			return i
		}
	}
	return -1
}

// indices maps a previous answer to option positions. Answers decoded from
// JSON arrive as []any.
func (c choices) indices(answer any) []int {
	var picked []string
	switch v := answer.(type) {
	case []string:
		picked = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				picked = append(picked, s)
			}
		}
	}
	var out []int
	for _, value := range picked {
		if i := c.index(value); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}

func (c choices) pick(indices []int) []string {
	var out []string
	for _, i := range indices {
		if i >= 0 && i < len(c) {
			out = append(out, c[i])
		}
	}
	return out
}

// check validates one answer against the field's submission schema. Blank
// answers only fail for required fields.
func check(f field.Field, value any) error {
	if isBlank(value) {
		if f.Required {
			return errors.New("required")
		}
		return nil
	}
	prop := submission.Property(f)
	if prop == nil {
		return nil
	}
	err := prop.VisitJSON(value)
	if err == nil {
		return nil
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return errors.New(schemaErr.Reason)
	}
	return err
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func setAnswer(values map[string]any, id, response string) {
	if response == "" {
		delete(values, id)
		return
	}
	values[id] = response
}

func firstFailing(seq field.Sequence, result submission.Result) string {
	for _, f := range seq {
		if len(result.For(f.ID)) > 0 {
			return f.ID
		}
	}
	return ""
}

func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func fieldName(f field.Field) string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.ID
}

func displayLabel(f field.Field) string {
	if f.Required {
		return fieldName(f) + " *"
	}
	return fieldName(f)
}

func helpText(f field.Field) string {
	return strings.TrimSpace(f.Description)
}

func headingText(f field.Field) string {
	text := strings.TrimSpace(f.Label)
	if f.ShowDescription && strings.TrimSpace(f.Description) != "" {
		text += "\n" + strings.TrimSpace(f.Description)
	}
	return text
}

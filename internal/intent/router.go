package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository"
)

// Response is the answer to one question
type Response struct {
	Intent Intent
	Text   string
	HTML   bool
}

// Router classifies questions and answers them from a transaction store
type Router struct {
	store repository.TransactionReader
	rules []Rule
	log   *zap.Logger
}

// NewRouter creates a router over the default rule table
func NewRouter(store repository.TransactionReader, log *zap.Logger) *Router {
	return &Router{
		store: store,
		rules: DefaultRules(),
		log:   log,
	}
}

// Rules returns the rule table in priority order
func (r *Router) Rules() []Rule {
	rules := make([]Rule, len(r.rules))
	copy(rules, r.rules)
	return rules
}

// Classify returns the intent of the first rule whose trigger occurs in the
// question, or Unrecognized.
func (r *Router) Classify(question string) Intent {
	if rule, ok := r.match(question); ok {
		return rule.Intent
	}
	return Unrecognized
}

// Respond answers a question. A missing or malformed parameter returns a
// *ParamError; store failures are returned wrapped.
func (r *Router) Respond(ctx context.Context, question string) (*Response, error) {
	rule, ok := r.match(question)
	if !ok {
		r.log.Debug("Unrecognized question", zap.String("question", question))
		return &Response{Intent: Unrecognized, Text: UnrecognizedMessage}, nil
	}

	params, err := rule.Extract(question)
	if err != nil {
		r.log.Info("Malformed parameter",
			zap.String("intent", string(rule.Intent)),
			zap.Error(err))
		return nil, err
	}

	text, err := rule.Handle(ctx, r.store, params)
	if err != nil {
		var paramErr *ParamError
		if errors.As(err, &paramErr) {
			r.log.Info("Malformed parameter",
				zap.String("intent", string(rule.Intent)),
				zap.Error(err))
			return nil, paramErr
		}
		return nil, fmt.Errorf("failed to answer %s: %w", rule.Intent, err)
	}

	r.log.Debug("Answered question",
		zap.String("intent", string(rule.Intent)),
		zap.Int("length", len(text)))

	return &Response{Intent: rule.Intent, Text: text, HTML: IsHTML(text)}, nil
}

func (r *Router) match(question string) (Rule, bool) {
	lowered := strings.ToLower(question)
	for _, rule := range r.rules {
		if rule.Matches(lowered) {
			return rule, true
		}
	}
	return Rule{}, false
}

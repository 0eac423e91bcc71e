// Package handlers implements the four API functions. Every handler answers
// with status 200 and reports failures in the JSON body.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/collin-smith/CdkApp/internal/observability"
	"github.com/collin-smith/CdkApp/pkg/lambda"
)

// traceTimeLayout renders timestamps such as "Monday, 02 January 2006 15:04:05"
const traceTimeLayout = "Monday, 02 January 2006 15:04:05"

// Settings are the deployment values the handlers report and route on
type Settings struct {
	Environment string
	Region      string
	Bucket      string
}

// Options holds the collaborators shared by every handler
type Options struct {
	Settings Settings
	Logger   *logrus.Logger
	Metrics  *observability.Metrics
	Now      func() time.Time
}

// base runs one invocation and turns its outcome into a response
type base struct {
	label    string // metric and log label
	name     string // prefix of failure messages
	settings Settings
	logger   *logrus.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

func newBase(label, name string, opts Options) base {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return base{
		label:    label,
		name:     name,
		settings: opts.Settings,
		logger:   logger,
		metrics:  opts.Metrics,
		now:      now,
	}
}

func (b *base) timestamp() string {
	return b.now().Format(traceTimeLayout)
}

// invoke runs fn inside a boundary that converts errors and panics into the
// in-band payload.
func (b *base) invoke(ctx context.Context, raw []byte, fn func(ctx context.Context, inv *invocation)) *lambda.Response {
	start := time.Now()
	inv := &invocation{name: b.name, raw: raw}

	func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.WithFields(logrus.Fields{
					"handler": b.label,
					"stack":   string(debug.Stack()),
				}).Error("Handler panicked")
				inv.fail(fmt.Errorf("panic: %v", r))
			}
		}()
		fn(ctx, inv)
	}()

	body, err := json.Marshal(inv.body())
	if err != nil {
		inv.fail(fmt.Errorf("failed to encode response: %w", err))
		inv.objects, inv.user = nil, nil
		body, _ = json.Marshal(inv.body())
	}

	elapsed := time.Since(start)
	outcome := inv.outcome()

	fields := logrus.Fields{
		"handler":    b.label,
		"request_id": requestID(ctx, inv.req),
		"success":    outcome == observability.OutcomeSuccess,
		"outcome":    outcome,
		"latency_ms": elapsed.Milliseconds(),
	}
	if inv.err != nil {
		fields["error"] = inv.err.Error()
		b.logger.WithFields(fields).Warn("Invocation failed")
	} else {
		b.logger.WithFields(fields).Info("Invocation completed")
	}

	b.metrics.ObserveInvocation(b.label, outcome, elapsed)

	return lambda.NewTextResponse(body)
}

// requestID prefers the Lambda request id, then the API Gateway one
func requestID(ctx context.Context, req *lambda.Request) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if req != nil && req.RequestID != "" {
		return req.RequestID
	}
	return uuid.New().String()
}

// invocation accumulates the trace and outcome of one call
type invocation struct {
	name     string
	raw      []byte
	req      *lambda.Request
	request  json.RawMessage
	trace    []string
	objects  any
	user     any
	err      error
	notFound bool
	message  string
}

// envelope decodes the proxy event and checks that the body is JSON. On
// failure it records the error and returns false. The echoed request stays ""
// when the event itself is malformed and is the quoted body when only the
// body is.
func (inv *invocation) envelope() (*lambda.Request, bool) {
	req, err := lambda.ParseEnvelope(inv.raw)
	if err != nil {
		inv.fail(err)
		return nil, false
	}
	inv.req = req
	inv.request = echo(req.Body)
	if !json.Valid(req.Body) {
		inv.fail(fmt.Errorf("invalid request body: %w", errNotJSON))
		return req, false
	}
	return req, true
}

func (inv *invocation) tracef(format string, args ...any) {
	inv.trace = append(inv.trace, fmt.Sprintf(format, args...))
}

// fail records the first failure; later ones are dropped
func (inv *invocation) fail(err error) {
	if inv.message != "" {
		return
	}
	inv.err = err
	inv.message = fmt.Sprintf("%s Exception:%v", inv.name, err)
}

// missing records a lookup that found no record
func (inv *invocation) missing(email string) {
	if inv.message != "" {
		return
	}
	inv.notFound = true
	inv.message = fmt.Sprintf("record not found for %s", email)
}

func (inv *invocation) outcome() string {
	switch {
	case inv.err != nil:
		return observability.OutcomeFailure
	case inv.notFound:
		return observability.OutcomeNotFound
	default:
		return observability.OutcomeSuccess
	}
}

func (inv *invocation) body() responseBody {
	request := inv.request
	if request == nil {
		request = emptyRequest
	}
	return responseBody{
		Request:   request,
		Response:  strings.Join(inv.trace, " "),
		S3Objects: inv.objects,
		User:      inv.user,
		Success:   inv.message == "",
		Message:   inv.message,
	}
}

package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// WithRequestID attaches a request ID for invocations that do not come
// through the Lambda runtime (the local server, tests).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the invocation's request ID, preferring the one the
// Lambda runtime supplies.
func RequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// InvocationFields returns log fields describing the current invocation
func InvocationFields(ctx context.Context, functionName string) logrus.Fields {
	fields := logrus.Fields{
		"function_name": functionName,
	}

	if requestID := RequestID(ctx); requestID != "" {
		fields["request_id"] = requestID
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.InvokedFunctionArn != "" {
		fields["function_arn"] = lc.InvokedFunctionArn
	}
	if lambdacontext.FunctionVersion != "" {
		fields["function_version"] = lambdacontext.FunctionVersion
	}

	return fields
}

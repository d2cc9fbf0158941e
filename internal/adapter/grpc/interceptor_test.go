package grpc

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/wealthflow-planner/internal/logging"
)

func TestAuthInterceptor(t *testing.T) {
	validToken := "test-token-123"
	interceptor := AuthInterceptor(validToken, HealthCheckMethod)

	withAuth := func(value string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", value))
	}

	tests := []struct {
		name           string
		ctx            context.Context
		method         string
		handlerCalled  bool
		expectedCode   codes.Code
		expectedErrMsg string
	}{
		{
			name:          "Valid Token",
			ctx:           withAuth(validToken),
			method:        "/" + ServiceName + "/CalculatePlan",
			handlerCalled: true,
			expectedCode:  codes.OK,
		},
		{
			name:          "Valid Bearer Token",
			ctx:           withAuth("Bearer " + validToken),
			method:        "/" + ServiceName + "/CalculatePlan",
			handlerCalled: true,
			expectedCode:  codes.OK,
		},
		{
			name:           "Invalid Token",
			ctx:            withAuth("wrong-token"),
			method:         "/" + ServiceName + "/CalculatePlan",
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "invalid token",
		},
		{
			name:           "Missing Token",
			ctx:            context.Background(),
			method:         "/" + ServiceName + "/CalculatePlan",
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing metadata",
		},
		{
			name: "Missing Authorization Header",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("other-header", "value"),
			),
			method:         "/" + ServiceName + "/ListSnapshots",
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing authorization header",
		},
		{
			name:          "Health Check Without Token",
			ctx:           context.Background(),
			method:        HealthCheckMethod,
			handlerCalled: true,
			expectedCode:  codes.OK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				handlerCalled = true
				return "success", nil
			}

			info := &grpc.UnaryServerInfo{FullMethod: tt.method}

			resp, err := interceptor(tt.ctx, "test-request", info, handler)

			assert.Equal(t, tt.handlerCalled, handlerCalled, "handler called status mismatch")

			if tt.expectedCode == codes.OK {
				assert.NoError(t, err)
				assert.Equal(t, "success", resp)
			} else {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok, "error should be a gRPC status")
				assert.Equal(t, tt.expectedCode, st.Code())
				assert.Contains(t, st.Message(), tt.expectedErrMsg)
			}
		})
	}
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{name: "success", err: nil, wantLevel: "level=DEBUG"},
		{name: "client error", err: status.Error(codes.InvalidArgument, "bad month"), wantLevel: "level=WARN"},
		{name: "server error", err: status.Error(codes.Internal, "boom"), wantLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewWithWriter(logging.Config{Level: "debug", Format: "text"}, &buf)
			interceptor := LoggingInterceptor(logger)

			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return "ok", tt.err
			}
			info := &grpc.UnaryServerInfo{FullMethod: "/" + ServiceName + "/GetNetWorth"}

			_, err := interceptor(context.Background(), "req", info, handler)

			assert.Equal(t, tt.err, err)
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), "method=/wealthflow.planner.v1.PlannerService/GetNetWorth")
			assert.Contains(t, buf.String(), "code="+status.Code(tt.err).String())
		})
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(logging.Config{Level: "debug", Format: "text"}, &buf)
	interceptor := RecoveryInterceptor(logger)
	info := &grpc.UnaryServerInfo{FullMethod: "/" + ServiceName + "/GetNetWorth"}

	t.Run("panic becomes internal error", func(t *testing.T) {
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			panic("Cannot create a Decimal from +Inf")
		}

		resp, err := interceptor(context.Background(), "req", info, handler)

		assert.Nil(t, resp)
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Contains(t, buf.String(), "rpc panicked")
		assert.Contains(t, buf.String(), "Cannot create a Decimal")
	})

	t.Run("normal calls pass through", func(t *testing.T) {
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return "ok", nil
		}

		resp, err := interceptor(context.Background(), "req", info, handler)

		assert.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})
}

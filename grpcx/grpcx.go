/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package grpcx

import (
	"context"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/backtrace/adapter"
)

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that attaches
// the backtrace of a failing handler's error as a google.rpc.DebugInfo
// status detail.
//
// The gRPC code and message of the error are preserved: errors that already
// carry a status keep it, other errors become codes.Unknown with their
// Error() text, exactly as grpc-go would report them. Errors without a
// backtrace are returned as-is.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, WithDebugInfo(err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return WithDebugInfo(handler(srv, ss))
	}
}

// WithDebugInfo converts err into a gRPC status error carrying its backtrace
// as a DebugInfo detail. It returns err unchanged when err is nil, carries no
// backtrace, or maps to codes.OK.
//
// If attaching the detail fails, the bare status error is returned.
func WithDebugInfo(err error) error {
	if err == nil {
		return nil
	}
	t := adapter.FromError(err)
	if t == nil {
		return err
	}

	base := gstatus.Convert(err)
	if base.Code() == gcodes.OK {
		return err
	}
	if with, derr := base.WithDetails(adapter.ToDebugInfo(t, err.Error())); derr == nil {
		return with.Err()
	}
	return base.Err()
}

// ExtractDebugInfo pulls the google.rpc.DebugInfo detail out of a gRPC error,
// if present. Useful in tests and client code.
func ExtractDebugInfo(err error) (*errdetails.DebugInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if di, ok := d.(*errdetails.DebugInfo); ok {
			return di, true
		}
	}
	return nil, false
}

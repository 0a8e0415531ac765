// Package announce publishes the detected resource to an OTLP
// collector as a single log record.
package announce

import (
	"context"
	"fmt"
	"time"

	"github.com/fidde/otel_resource_detector/internal/convert"
	"github.com/fidde/otel_resource_detector/pkg/resource"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const scopeName = "github.com/fidde/otel_resource_detector"

// Announcer holds a client connection to an OTLP logs endpoint.
type Announcer struct {
	endpoint string
	timeout  time.Duration
	conn     *grpc.ClientConn
	client   collogspb.LogsServiceClient
}

// New creates an Announcer for the given collector endpoint
// (plaintext gRPC). The connection is established lazily on the first
// Announce call.
func New(endpoint string, timeout time.Duration) (*Announcer, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("creating client for %s: %w", endpoint, err)
	}
	return &Announcer{
		endpoint: endpoint,
		timeout:  timeout,
		conn:     conn,
		client:   collogspb.NewLogsServiceClient(conn),
	}, nil
}

// Announce exports a single "resource detected" log record carrying
// res as its OTLP resource.
func (a *Announcer) Announce(ctx context.Context, res *resource.Resource) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	resp, err := a.client.Export(ctx, buildRequest(res, time.Now()))
	if err != nil {
		return fmt.Errorf("exporting resource log to %s: %w", a.endpoint, err)
	}
	if ps := resp.GetPartialSuccess(); ps.GetRejectedLogRecords() > 0 {
		return fmt.Errorf("collector rejected %d log records: %s",
			ps.GetRejectedLogRecords(), ps.GetErrorMessage())
	}
	return nil
}

// Close tears down the client connection.
func (a *Announcer) Close() error {
	return a.conn.Close()
}

func buildRequest(res *resource.Resource, now time.Time) *collogspb.ExportLogsServiceRequest {
	ts := uint64(now.UnixNano())
	return &collogspb.ExportLogsServiceRequest{
		ResourceLogs: []*logspb.ResourceLogs{{
			Resource: convert.ToProto(res),
			ScopeLogs: []*logspb.ScopeLogs{{
				Scope: &commonpb.InstrumentationScope{Name: scopeName},
				LogRecords: []*logspb.LogRecord{{
					TimeUnixNano:         ts,
					ObservedTimeUnixNano: ts,
					SeverityNumber:       logspb.SeverityNumber_SEVERITY_NUMBER_INFO,
					SeverityText:         "INFO",
					Body: &commonpb.AnyValue{
						Value: &commonpb.AnyValue_StringValue{StringValue: "resource detected"},
					},
					Attributes: []*commonpb.KeyValue{{
						Key: "resource.fingerprint",
						Value: &commonpb.AnyValue{
							Value: &commonpb.AnyValue_StringValue{StringValue: res.Fingerprint()},
						},
					}},
				}},
			}},
		}},
	}
}

package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.trai.ch/memo/internal/adapters/telemetry"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name       string
		exporter   domain.Telemetry
		wantExport bool
	}{
		{name: "bridge only", exporter: domain.TelemetryNone},
		{name: "stdout exporter", exporter: domain.TelemetryStdout, wantExport: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := otel.GetTracerProvider()
			t.Cleanup(func() { otel.SetTracerProvider(prev) })

			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)
			mockLogger.EXPECT().Debug(gomock.Any()).Times(1)

			var out bytes.Buffer
			shutdown, err := telemetry.Setup(telemetry.NewBridge(mockLogger), tt.exporter, &out)
			require.NoError(t, err)

			_, span := telemetry.NewOTelTracer("memo-test").Start(context.Background(), "persist")
			span.End()
			require.NoError(t, shutdown(context.Background()))

			if tt.wantExport {
				assert.Contains(t, out.String(), `"Name":"persist"`)
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}

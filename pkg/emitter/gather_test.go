package emitter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendGathered(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "snapraid_metrics_collector_operation_success",
		Help: "Whether the operation succeeded",
	}, []string{"operation"})
	reg.MustRegister(g)
	g.WithLabelValues("sync").Set(1)

	e := New()
	require.NoError(t, e.Declare("snapraid_sync_exit_status", "Exit status"))
	require.NoError(t, e.Sample("snapraid_sync_exit_status", nil, 0))
	require.NoError(t, e.AppendGathered(reg))

	out := string(e.Bytes())
	assert.True(t, strings.HasPrefix(out, "# HELP snapraid_sync_exit_status"))
	assert.Contains(t, out, "# TYPE snapraid_metrics_collector_operation_success gauge\n")
	assert.Contains(t, out, `snapraid_metrics_collector_operation_success{operation="sync"} 1`+"\n")
	assert.True(t, e.Declared("snapraid_metrics_collector_operation_success"))
	assert.Equal(t, 2, e.SampleCount())
}

func TestAppendGatheredDuplicate(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "m", Help: "help"})
	reg.MustRegister(g)

	e := New()
	require.NoError(t, e.Declare("m", "help"))
	assert.Error(t, e.AppendGathered(reg))
}

func TestAppendGatheredFamilies(t *testing.T) {
	name, help, label, value := "snapraid_metrics_collector_info", "Build info", "version", "1.0.0"
	gauge := dto.MetricType_GAUGE
	one := 1.0
	g := prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		return []*dto.MetricFamily{{
			Name: &name,
			Help: &help,
			Type: &gauge,
			Metric: []*dto.Metric{{
				Label: []*dto.LabelPair{{Name: &label, Value: &value}},
				Gauge: &dto.Gauge{Value: &one},
			}},
		}}, nil
	})

	e := New()
	require.NoError(t, e.AppendGathered(g))
	assert.Equal(t, []string{
		"# HELP snapraid_metrics_collector_info Build info",
		"# TYPE snapraid_metrics_collector_info gauge",
		`snapraid_metrics_collector_info{version="1.0.0"} 1`,
	}, e.Lines())
}

func TestAppendGatheredError(t *testing.T) {
	g := prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		return nil, fmt.Errorf("collector exploded")
	})

	e := New()
	err := e.AppendGathered(g)
	require.Error(t, err)
	assert.Empty(t, e.Lines())
}

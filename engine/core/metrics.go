package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling frame-time average and a frames-per-second counter,
// mirrored into Prometheus collectors.
type Metrics struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64

	framesTotal  prometheus.Counter
	frameSeconds prometheus.Histogram
	fpsGauge     prometheus.Gauge
}

// NewMetrics creates the frame metrics and registers the collectors on reg.
// A nil registerer leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "glengine_frames_total",
			Help: "Total number of frames run by the engine loop.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "glengine_frame_seconds",
			Help:    "Time spent in update, draw and input dispatch per frame, in seconds.",
			Buckets: []float64{.001, .002, .004, .008, .016, .033, .066, .1, .25, .5, 1},
		}),
		fpsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "glengine_fps",
			Help: "Frames per second over the last full second.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.framesTotal, m.frameSeconds, m.fpsGauge} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) Update(frameElapsed time.Duration) {
	// Calculate frame ms average
	frameMS := frameElapsed.Seconds() * 1000.0
	m.MStimes[m.FrameAVGCounter] = frameMS
	if m.FrameAVGCounter == AVG_COUNT-1 {
		m.MSavg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.MSavg += m.MStimes[i]
		}
		m.MSavg /= float64(AVG_COUNT)
	}
	m.FrameAVGCounter++
	m.FrameAVGCounter %= AVG_COUNT

	// Calculate Frames per second.
	m.AccumulatedFrameMS += frameMS
	if m.AccumulatedFrameMS > 1000 {
		m.FPS = float64(m.Frames)
		m.AccumulatedFrameMS -= 1000
		m.Frames = 0
		m.fpsGauge.Set(m.FPS)
	}

	// Count all Frames.
	m.Frames++

	m.framesTotal.Inc()
	m.frameSeconds.Observe(frameElapsed.Seconds())
}

func (m *Metrics) FrameTime() float64 {
	return m.MSavg
}

func (m *Metrics) Frame() (float64, float64) {
	return m.FPS, m.MSavg
}

package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the audit workflow counters. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	auditsCreated   prometheus.Counter
	answersUpserted prometheus.Counter
	submissions     *prometheus.CounterVec
	exports         *prometheus.CounterVec
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func NewRecorder(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		auditsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storeaudit_audits_created_total",
			Help: "Audits started.",
		}),
		answersUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storeaudit_answers_upserted_total",
			Help: "Answer rows written by draft saves.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storeaudit_submissions_total",
			Help: "Submit attempts by outcome.",
		}, []string{"result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storeaudit_exports_total",
			Help: "Report exports by response shape and outcome.",
		}, []string{"shape", "result"}),
	}
	reg.MustRegister(r.auditsCreated, r.answersUpserted, r.submissions, r.exports)
	return r
}

func (r *Recorder) AuditCreated() {
	if r == nil {
		return
	}
	r.auditsCreated.Inc()
}

func (r *Recorder) AnswersUpserted(n int) {
	if r == nil {
		return
	}
	r.answersUpserted.Add(float64(n))
}

func (r *Recorder) Submission(result string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(result).Inc()
}

func (r *Recorder) Export(shape, result string) {
	if r == nil {
		return
	}
	r.exports.WithLabelValues(shape, result).Inc()
}

// Register mounts the scrape endpoint on the given group.
func Register(router *gin.RouterGroup, reg *prometheus.Registry) {
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TagWeightRecalcs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cmsarticle_tag_weight_recalcs_total",
		Help: "Number of tag weight recalculations",
	})

	DeletionsVetoed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cmsarticle_deletions_vetoed_total",
		Help: "Section/tag deletions rejected because content still references them",
	}, []string{"entity"})

	LocalizationUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cmsarticle_localization_updates_total",
		Help: "Back-references set or cleared while keeping localizations symmetric",
	}, []string{"action"})

	ArticlesSaved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cmsarticle_articles_saved_total",
		Help: "Saved articles by model",
	}, []string{"model", "first_save"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cmsarticle_http_request_duration_seconds",
		Help:    "HTTP request duration by route template",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// MustRegister вызывается один раз при старте.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(TagWeightRecalcs, DeletionsVetoed, LocalizationUpdates, ArticlesSaved, HTTPDuration)
}

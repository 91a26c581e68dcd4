/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/mintmarket/goapi/base/env"
	"github.com/mintmarket/goapi/base/log"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"

	// ddRate is the rate to pass metrics to datadog agent. 1 means always
	ddRate = 1
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}
	ddClient statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

func initDDClient() {
	addr := fmt.Sprintf("%s:%d", viper.GetString("datadog_host"), 8125)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")

	var err error
	ddClient, err = statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &impl{
		pfx: pkgName,
		ddTags: []string{
			"host:", // remove unused host tag
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type impl struct {
	pfx    string
	ddTags []string
}

func (im *impl) tags(tags []string) []string {
	res := append([]string{}, im.ddTags...)
	for i := 0; i+1 < len(tags); i += 2 {
		v := tags[i+1]
		if v == "" {
			v = TagValueNA
		}
		res = append(res, strings.Join([]string{tags[i], v}, ":"))
	}
	return res
}

func (im *impl) key(key string) string {
	return im.pfx + "." + key
}

func (im *impl) BumpAvg(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	// datadog has no plain average, histogram covers it
	_ = ddClient.Histogram(im.key(key), val, im.tags(tags), ddRate)
}

func (im *impl) BumpSum(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	_ = ddClient.Count(im.key(key), int64(val), im.tags(tags), ddRate)
}

func (im *impl) BumpHistogram(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	_ = ddClient.Histogram(im.key(key), val, im.tags(tags), ddRate)
}

type timeTracker struct {
	im    *impl
	key   string
	tags  []string
	start time.Time
}

func (t *timeTracker) End() {
	elapsed := time.Since(t.start)
	_ = ddClient.TimeInMilliseconds(t.im.key(t.key), float64(elapsed.Milliseconds()), t.im.tags(t.tags), ddRate)
}

func (im *impl) BumpTime(key string, tags ...string) Ender {
	initOnce.Do(initDDClient)
	return &timeTracker{im, key, tags, time.Now()}
}

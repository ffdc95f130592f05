package address_test

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chabad360/oscaddress/address"
	"github.com/chabad360/oscaddress/internal/demo"
	"github.com/chabad360/oscaddress/osc"
)

type received struct {
	mu   sync.Mutex
	msgs []demo.Toplevel
}

func (r *received) handle(m demo.Toplevel, _ net.Addr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
}

func (r *received) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func newDispatcher(t *testing.T, r *received) (*address.Dispatcher[demo.Toplevel], *osc.Metrics) {
	metrics := osc.NewMetrics(prometheus.NewRegistry())
	return &address.Dispatcher[demo.Toplevel]{
		Parse:   demo.ParseToplevel,
		Handler: r.handle,
		Logger:  zaptest.NewLogger(t),
		Metrics: metrics,
	}, metrics
}

func TestDispatcher_ImmediateBundle(t *testing.T) {
	r := &received{}
	d, metrics := newDispatcher(t, r)

	d.Dispatch(osc.NewBundle(
		osc.NewMessage("/renderer/new", int32(1)),
		osc.NewMessage("/renderer/1/yell", "x"),
		osc.NewMessage("/renderer/1/say", "hi"),
	), nil)

	require.Equal(t, 2, r.len())
	assert.Equal(t, demo.Toplevel(demo.ToplevelRenderer{Renderer: demo.RendererNew{IDArgs: demo.IDArgs{ID: 1}}}), r.msgs[0])
	assert.Equal(t, demo.Toplevel(demo.ToplevelRenderer{Renderer: demo.RendererByID{ID: 1, Msg: demo.Say{SayArgs: demo.SayArgs{Text: "hi"}}}}), r.msgs[1])

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.MessagesRouted.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MessagesRouted.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PacketErrors.WithLabelValues("route")))
}

func TestDispatcher_FutureBundle(t *testing.T) {
	r := &received{}
	d, _ := newDispatcher(t, r)

	b, err := osc.NewBundleWithTime(time.Now().Add(50 * time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, b.Append(osc.NewMessage("/routegraph/add_node", int32(9))))

	d.Dispatch(b, nil)
	assert.Equal(t, 0, r.len())
	assert.Eventually(t, func() bool { return r.len() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDispatcher_NilMetrics(t *testing.T) {
	r := &received{}
	d := &address.Dispatcher[demo.Toplevel]{Parse: demo.ParseToplevel, Handler: r.handle}

	d.Dispatch(osc.NewMessage("/bogus"), nil)
	d.Dispatch(osc.NewMessage("/routegraph/add_edge", int32(1), int32(2)), nil)
	assert.Equal(t, 1, r.len())
}

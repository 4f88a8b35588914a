package bview

import "strconv"

// View selects one of the views held by a [Store].
type View uint8

const (
	PullView View = iota
	PushView
	GlobalView
	SamplerView
	StreamView

	nViews
)

// NViews is the number of views held by a [Store].
const NViews = int(nViews)

var viewNames = [nViews]string{
	PullView:    "pull",
	PushView:    "push",
	GlobalView:  "global",
	SamplerView: "sampler",
	StreamView:  "stream",
}

func (v View) String() string {
	if v >= nViews {
		return "View(" + strconv.Itoa(int(v)) + ")"
	}
	return viewNames[v]
}

// Views returns every valid View, in declaration order.
func Views() [NViews]View {
	return [NViews]View{PullView, PushView, GlobalView, SamplerView, StreamView}
}

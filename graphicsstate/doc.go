// Package graphicsstate tracks the PDF graphics and text state while a
// content stream is replayed.
//
// A [GraphicsState] is a local accumulator owned by one interpreter; q and Q
// push and pop copies of its [State]. Text fragments carry a [State] value
// snapshot, never a pointer, so later operators cannot change what an
// earlier fragment recorded.
//
// The state a stream starts from comes from [Config]: the font size and
// fill color used for text shown before any Tf or color operator.
package graphicsstate

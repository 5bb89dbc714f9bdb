// Package websocket bridges a gorilla WebSocket connection into the stream
// subscription contract: inbound messages become a publisher, and any stream
// can be written out as messages through a sink.
//
// The bridge respects the gorilla concurrency rules. A connection supports
// one concurrent reader, so Publisher accepts exactly one subscription; it
// supports one concurrent writer, so Sink writes one element at a time under
// step demand.
//
// The package name collides with gorilla's, so import it under an alias:
//
//	import (
//		"github.com/gorilla/websocket"
//
//		wsbridge "github.com/dmitrymomot/streamkit/integration/websocket"
//	)
//
// # Reading a Connection
//
// Publisher emits each received message payload. A normal close from the
// peer completes the stream; any other failure fails it:
//
//	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	inbound := wsbridge.Publisher(conn)
//
//	p, err := pump.NewPump(inbound, func(ctx context.Context, msg []byte) error {
//		return handle(ctx, msg)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = p.Start(ctx) // nil after a clean close from the peer
//
// Cancelling the subscription or its context closes the connection, since
// that is the only way to unblock a pending read.
//
// # Writing a Stream
//
// Sink writes each element as one message and finishes with a normal close
// frame when the stream completes:
//
//	sink := wsbridge.Sink(conn, wsbridge.WithTextMessages())
//	updates.Subscribe(ctx, sink)
//
// Write failures cancel the upstream subscription; observe them with
// WithStreamOptions(stream.WithErrorFunc(...)).
//
// # Server Side
//
// The bridge works the same on an upgraded server connection:
//
//	var upgrader = websocket.Upgrader{}
//
//	http.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
//		conn, err := upgrader.Upgrade(w, r, nil)
//		if err != nil {
//			return
//		}
//		feed.Subscribe(r.Context(), wsbridge.Sink(conn, wsbridge.WithTextMessages()))
//	})
package websocket

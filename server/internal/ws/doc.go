// Package ws implements the WebSocket hub for motortwin-server.
//
// Hub manages a set of connected dashboards and pushes every evaluated
// Snapshot to all of them as soon as the scheduler produces it; alert
// transitions are pushed on the same connection.
//
// New(latest, opts) creates a Hub. latest supplies the snapshot sent
// immediately on connect so a fresh dashboard never waits a full tick.
// Hub.Run(ctx) drains the outbound queue until ctx is cancelled, then closes
// all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket.
//
// Message format sent to clients:
//
//	{
//	  "event": "snapshot" | "alert",
//	  "data":  { /* same schema as GET /api/v1/snapshot, or one alert */ }
//	}
//
// The WebSocket endpoint is mounted at /ws/stream by the server.
package ws

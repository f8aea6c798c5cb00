// Package kutelog provides an HTTP client for a kutelog server's
// non-streaming endpoints.
//
// # Overview
//
// The log stream itself is a WebSocket (see package livelog). This package
// covers the surrounding plumbing:
//
//   - Address normalisation: "host:port", "http://host:port" and
//     "ws://host:port" all resolve to the same server
//   - WebSocketURL: the /ws endpoint, wss:// when the base is https://
//   - FetchVersion: GET /version, shown in the console header
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json
//   - Include User-Agent: kuteview/0.1
//   - Have a 5-second timeout
//   - Return wrapped errors describing what failed
//
// # Usage Example
//
//	client, err := kutelog.NewClient("127.0.0.1:9106")
//	if err != nil {
//		log.Fatalf("bad server address: %v", err)
//	}
//	version, err := client.FetchVersion(ctx)
//	if err != nil {
//		log.Printf("version lookup failed: %v", err)
//	}
//	stream := client.WebSocketURL() // ws://127.0.0.1:9106/ws
//
// Version lookups are informational; callers treat failures as soft.
package kutelog

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package taskapi provides the HTTP client for the task service.
//
// The service exposes a single read endpoint:
//
//	GET /tasks?date=YYYY-MM-DD  ->  200 [{"id":1,"title":"...","priority":0,...}]
//
// A 400 carries a plain-text reason (missing or malformed date); a 500
// carries the server error text. Both surface as *ClientError.
//
// # Usage
//
//	client := taskapi.NewClientWithConfig(&taskapi.ClientConfig{
//	    BaseURL: "http://localhost:8080",
//	    Timeout: 5 * time.Second,
//	})
//	tasks, err := client.ListTasks(ctx, "2024-01-01")
//	if taskapi.IsConnection(err) {
//	    // service down
//	}
package taskapi

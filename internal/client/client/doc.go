// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. A transport contract (see the Client interface) covering the REST
//     API: Register/Login/Me/UpdateProfile, the task CRUD calls and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     bearer token and maps response statuses onto the common error taxonomy.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every error returned by HTTPClient classifies with common.KindOf:
//
//	400 -> *common.ValidationError (field details from the "errors" array)
//	401 -> common.ErrorUnauthorized
//	404 -> common.ErrorNotFound
//	409 -> common.ErrorAlreadyExists
//	network failure or undecodable body -> *common.TransportError
//	anything else -> common.ErrorInternal
package client

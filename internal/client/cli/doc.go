// Package cli provides the interactive GrantPilot command-line client.
//
// It wires configuration, local storage, the upload and entitlement
// services, and an interactive REPL. Typical flow: sign in with an API
// token, stage documents for upload, submit them as one batch, unlock the
// paid stages, and follow the generation progress stream.
//
// Key features:
//   - Login / Logout (API token kept in memory, profile cached locally)
//   - Stage files for upload with client-side admission checks
//   - Submit the staged batch and reconcile server results
//   - Unlock paid stages through the demo checkout
//   - Follow stage-4 generation progress over SSE
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

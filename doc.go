// Package session implements the client-side session and route-guard state
// machine for consoles that authenticate against a JWT-issuing REST backend.
//
// Session lifecycle:
//   - Machine owns the in-memory session fact (user, state, loading flag) and
//     is the only component allowed to mutate the persisted token or the
//     request channel's bearer header. SignIn, SignUp, and SignOut never
//     surface errors to callers; outcomes are observable through state and
//     notifications only, so view layers cannot end up handling rejected
//     calls twice.
//   - Guard runs one idempotent validation pass per navigation. It reconciles
//     the persisted token with the in-memory session, clears tokens that are
//     malformed or past their exp claim, and arbitrates redirects between the
//     login view and the protected landing view. Passes are generation-keyed
//     so a superseded pass cannot apply stale state or navigation.
//
// Token handling:
//   - Tokens are decoded without signature verification (DecodeIdentity). The
//     backend independently validates every protected call, so a forged
//     client-side claim can only produce a confusing UI state, never real
//     access. Expiry is a separate temporal check, not a decode failure.
//   - TokenStore abstracts the persistence slot (browser cookie, memory).
//     Absence of a token is a valid, expected state and Clear is idempotent.
//
// Transport:
//   - Channel wraps the HTTP client used for every backend call. It carries a
//     mutable default-header slot plus an optional token source hook, and maps
//     transport failures, non-2xx rejections, and decode problems into
//     go-errors values once at the boundary so downstream code never inspects
//     raw error shapes.
package session

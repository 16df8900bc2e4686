// Package api holds the value types shared between the Nordpay client
// surface and the request pipeline: the request descriptor produced by the
// per-operation factories, the uniform Result returned to callers, and the
// normalized error shapes.
//
// Every public operation on the client resolves to a Result. A Result is a
// discriminated union: Ok == true carries Data, Ok == false carries a
// non-empty human-readable Message and, when the failure could be
// classified, an *Error with the original provider payload.
package api

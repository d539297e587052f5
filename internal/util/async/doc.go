// Package async runs independent operations concurrently.
//
// [Run] starts every task, cancels the remaining ones once a task fails and
// reports all failures in task order.
package async

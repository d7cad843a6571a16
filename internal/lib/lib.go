// Package lib holds modules that sit outside the request layers: the
// background job worker (asynq), the Resend email client, the health
// monitor and command line helpers.
package lib

// Package web serves the account page and the home route.
//
// Every POST follows post/redirect/get: the handler restores the visitor's
// form from the form store, runs one authform operation, stores the
// resulting notice with the form and redirects, either back to the account
// page or to the home route once the visitor is signed in.
package web

// Package publisher talks to GitHub on behalf of `utpm ws publish`: it finds or
// creates the user's fork of typst/packages and opens the submission pull
// request once the package has been pushed.
package publisher

/*
Package x contains the shared building blocks of the extensions.

Sub-packages implement Handlers and Decorators that are combined by the
application. Authentication is abstracted behind Authenticator so that
extensions never depend on a concrete signature scheme.
*/
package x

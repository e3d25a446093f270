/*
Package errors implements the error kinds used across the application.

Each failure is categorized by a root error created with Register. The root
error carries an ABCI code that is returned to the client, so that the kind of
a failure can be inspected without parsing a message. Extensions that need
their own kinds register them with a unique code during program start.

Wrap a root error with additional information at the point of creation:

	return errors.Wrapf(errors.ErrNotFound, "pool %s", key)

The first wrap attaches a stack trace. Test an error kind with the Is method:

	if errors.ErrNotFound.Is(err) { ... }

Format an error with %+v to print the stack trace.
*/
package errors

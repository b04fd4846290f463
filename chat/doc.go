/*
`chat` package is a transport-agnostic implementation of a group chat
relay: rooms, per-connection sessions, and the message dispatch between
them.

This package should not know anything about sockets. A session writes
outbound frames to an io.Writer screen, one Write per frame, and the
transport layer feeds inbound frames to HandleMessage.
*/

package chat

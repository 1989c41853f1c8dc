/*
Package persistence serializes layout reads and writes per board.

Several hosts may share one layout store: an HTTP server, a replayed script
and a terminal session can all save the same board. The Manager pairs an
in-process lock per board with an optional distributed lock so that writes
from other replicas are serialized too.
*/
package persistence

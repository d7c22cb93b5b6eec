// Package pool
// Author: momentics <momentics@gmail.com>
//
// Scratch chunk pool the reactor's buffered streams read into.
package pool

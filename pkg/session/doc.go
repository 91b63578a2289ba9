/*
Package session implements session management and persistence orchestration.

It serializes access to each chat's Session, locally with ref-counted mutexes and
across replicas with an optional distributed locker, on top of any SessionStore.
*/
package session

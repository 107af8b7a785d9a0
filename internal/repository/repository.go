// Package repository handles all interactions with the data stores.
//
// It contains the SQL queries (PostgreSQL via pgx) and document queries
// (MongoDB) used to fetch and persist data, abstracting store details away
// from the service layer. Errors are wrapped with context and keep the
// driver error reachable through errors.Is/As, so callers can classify them
// with sqlerr.
package repository

// Package cli implements the command-line interface of the reservation exerciser.
//
// # Commands
//
// rest, graphql - Send one call and print the result:
//
//	exerciser rest create --start 2024-01-01 --end 2024-01-05 --preferences "quiet room"
//	exerciser graphql get --id 42
//	exerciser rest list
//
// Successful responses print as JSON indented by two spaces. Failures print a
// single "Error: <message>" line and still exit zero. A REST delete prints
// "Réservation supprimée avec succès" whatever the server answered.
//
// form - Drive the form interactively:
//
//	exerciser form
//
// Reads tab, set and operation commands from stdin. SOAP and gRPC tabs only
// show their hint text.
//
// # Global Flags
//
//	--config, -c    YAML config file (default: built-in defaults)
//	--rest-url      REST base URL
//	--graphql-url   GraphQL endpoint
//	--timeout       Per-call timeout (default: none)
//	--header        Extra request header, key=value, repeatable
//	--log-level     debug, info, warn, error (default: info)
//	--log-format    text or json (default: text)
//
// Every global flag except --header also reads an EXERCISER_* environment
// variable, and main loads a .env file when one is present.
package cli

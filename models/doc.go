// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - RegisterRequest: name, link, about
  - VoteRequest: voterId (optional)
  - LoginRequest: username, password
  - DeclareWinnerRequest: winnerId
  - SetHostRequest: name, link
  - SetEndAtRequest: endAt

# Domain Types

  - Channel: a competition entrant and its vote tally
  - Vote: one voter's vote (voter key is never serialized)
  - Winner: immutable snapshot taken when a winner is declared
  - Host: the host channel stored in settings
  - CompetitionStatus: public view of the settings

# Errors

ErrorResponse carries the HTTP status text, a human message and a
machine-readable reason (ReasonMissingField, ReasonAlreadyVoted, ...).
*/
package models

/*
Package domain contains the core domain model for the Strata planner.

It defines the fundamental entities of buffer planning, such as endpoint
paths, producer/consumer connections, forced orderings, and buffer types.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Connection: a producer endpoint feeding a consumer endpoint.
  - ForcedOrder: a group of endpoints that must stay contiguous and in
    declared order wherever a hub places them.
  - BufferType: the storage kind shared by every producer of a hub.
  - Slice: a half-open element range assigned to an endpoint.
*/
package domain

/*
Package ports defines the interfaces between the Strata core and its
adapters, following the Ports & Adapters pattern.

The core computes plans; adapters persist them. Because planning is
deterministic, a plan's fingerprint is a sound storage key: the same
network definition always maps to the same plan.
*/
package ports

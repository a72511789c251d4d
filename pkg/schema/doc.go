/*
Package schema provides shape templates for network endpoints.

A template describes the logical shape of an endpoint array as a list of
dimensions mixing fixed sizes and the wildcards B (batch) and T (time).
The planner only consumes three facts from a template: its element count
(the product of the fixed feature dimensions), its buffer type tag, and
its serialization to a plain attribute mapping for the layout tree.
*/
package schema

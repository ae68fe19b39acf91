/*
Package mapping provides the tag rules used to audit and shape OSM elements.

Classify assigns tag keys to one of four categories (plain, namespaced,
problem, other). CleanStreetName and CleanPostcode are the value cleaners
for street names and postcodes.

Rules bundles the lookup tables of the cleaners: the street type
abbreviations, the excluded postcodes and the keys that are cleaned.
The tables are read-only once created. DefaultRules returns the built-in
tables, New and FromFile read them from a YAML file.
*/
package mapping

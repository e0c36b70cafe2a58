// Package palette derives colour schemes from a single base colour.
//
// A Scheme is a closed enumeration of strategies (complementary, analogous,
// triadic, tetradic, monochromatic). Generate maps a base hex colour and a
// Scheme to an ordered list of hex colours; the list is rebuilt on every
// call and never mutated afterwards.
//
// Scheme names arriving from outside the program (tool arguments, config
// files) go through ParseScheme or GenerateNamed. An unknown name is not an
// error for GenerateNamed: it falls back to a one-colour palette holding the
// base colour, the same result Generate gives for an unparseable base.
package palette

// Package formats provides parsers for block/item model documents.
//
// A model is a set of axis-aligned cuboid elements. Each element carries up to
// six textured faces, and faces reference textures through the model's
// declaration-ordered texture map using a "#id" sigil.
package formats

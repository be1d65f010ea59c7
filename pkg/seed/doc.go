// Package seed generates the demo dataset and writes it into the
// registry's collections.
//
// Generate builds referenced collections first (accounts before
// opportunities, cases before comments) so every foreign key resolves;
// Validate checks that. Bootstrap applies a dataset when the store is
// uninitialized, holds another data version, or when forced. A fixed
// random seed makes the dataset reproducible.
package seed

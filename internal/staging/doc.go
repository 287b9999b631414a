// Package staging maintains the scratch directories transcription writes
// under the configured staging_dir. Each project gets one directory named
// after its id; cleanup removes directories for deleted projects and
// directories idle past a cutoff.
package staging

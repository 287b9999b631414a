// Package script turns a project's transcript into the editable script track:
// one item per word plus synthesized pause items for every gap that crosses
// the pause threshold.
//
// Generation is a pure function of the project, so the same transcript and
// deletion sets always produce the same track. That determinism is what lets
// the collapsed preview and the exported media agree.
package script

// Package events defines the typed session event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - session.*
//   - user_input.*
//   - transcript.*
//   - intent.*
//   - assistant_playback.*
//
// Semantics used across the package:
//
//   - Updated: mutable point-in-time snapshot that can change over time.
//   - Appended: append-only addition emitted in conversation order.
//   - Removed: turns rolled back after a cancelled or failed exchange.
//
// session events
//
//   - SessionStateChanged (session.state_changed): the session moved to a new
//     state.
//   - SessionError (session.error): a component failed; carries the error and
//     whether the session can continue.
//
// user_input events
//
//   - UserPartialTranscript (user_input.partial_transcript): mutable snapshot
//     of the utterance recognized so far. Each snapshot replaces the previous
//     one.
//
// transcript events
//
//   - TranscriptTurnAppended (transcript.turn_appended): a completed turn was
//     added to the conversation transcript.
//   - TranscriptOpenTurnUpdated (transcript.open_turn_updated): the assistant
//     turn currently being streamed changed; carries the turn snapshot.
//   - TranscriptTurnsRemoved (transcript.turns_removed): trailing turns were
//     rolled back; carries the ids of the removed turns.
//
// intent events
//
//   - IntentDispatched (intent.dispatched): a structured device command was
//     recognized and handed to the dispatcher.
//
// assistant_playback events
//
//   - AssistantPlaybackStarted (assistant_playback.started): spoken playback
//     of a response began.
//   - AssistantPlaybackEnded (assistant_playback.ended): spoken playback
//     finished or was cut off.
package events

// Package virtualref implements virtual referencing for multichannel sample
// streams.
//
// For each target channel i the [Engine] averages the channels marked active
// in row i of a [refmatrix.Matrix] and subtracts that average, scaled by a
// global gain, from channel i:
//
//	out[i][s] = in[i][s] - gain * (1/k) * Σ_{j: w[i][j] > 0} in[j][s]
//
// Rows without active entries pass through unchanged. Only the sign of a
// weight matters; its magnitude is stored and persisted but never used as a
// weight.
//
// A [Stage] owns the matrix, the gain and the engine for one processing
// node. It reacts to channel-count changes, processes host blocks in place
// and saves/loads its configuration as XML:
//
//	<STATE Type="VirtualRef">
//	  <PARAMETERS GlobalGain="1" NumChannels="3"/>
//	  <REFERENCES>
//	    <CHANNEL Index="1">
//	      <REFERENCE Index="2" Value="1"/>
//	    </CHANNEL>
//	  </REFERENCES>
//	</STATE>
//
// Indices in the file are 1-based.
//
// Neither type is safe for concurrent use. The host must not process a block
// while it reconfigures the matrix.
package virtualref

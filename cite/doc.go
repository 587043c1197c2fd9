// Package cite scores retrieved evidence and renders citations. The scorer
// rewards agreement across distinct sources, volume of supporting text, and
// the presence of recognized medical authorities, while keeping the final
// confidence inside [0,1].
package cite

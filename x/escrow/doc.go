/*
Package escrow implements custodial offers to exchange two assets.

A maker locks a deposit of asset A in a vault and asks for a fixed amount of
asset B. A taker fulfills the offer by paying B to the maker and receiving
the whole vault. The maker may cancel the offer instead and take A back.

Offers, their vaults and the authorities owning the vaults live at addresses
derived from the maker and a nonce, so anyone can recompute them. No private
key exists for a derived address and only this extension can authorize a
transfer out of a vault.
*/
package escrow

// SPDX-License-Identifier: Apache-2.0

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/opsboard/credvault/models"
)

// Column sets shared between queries. Order matters: scan destinations in
// the repositories mirror these lists.
var (
	userColumns = []string{"user_id", "login", "auth_hash", "name", "created_at"}

	vaultColumns = []string{"user_id", "kdf_salt", "wrapped_dek", "verifier", "created_at", "updated_at"}

	credentialMaskedColumns = []string{
		"id", "name", "category", "service_url",
		"has_username", "has_password", "has_notes", "has_totp",
		"custom_field_count", "updated_at",
	}

	credentialColumns = []string{
		"id", "user_id", "name", "category", "service_url",
		"has_username", "has_password", "has_notes", "has_totp",
		"custom_field_count", "payload", "created_at", "updated_at",
	}
)

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns("login", "auth_hash", "name", "created_at").
		Values(user.Login, user.AuthHash, user.Name, user.CreatedAt).
		ToSql()
}

func buildFindUserByLoginQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"login": login}).
		ToSql()
}

func buildInsertVaultQuery(b sq.StatementBuilderType, vault models.VaultRecord) (string, []any, error) {
	return b.Insert(vault.TableName()).
		Columns("user_id", "kdf_salt", "wrapped_dek", "verifier", "created_at", "updated_at").
		Values(vault.UserID, vault.KDFSalt, vault.WrappedDEK, vault.Verifier, vault.CreatedAt, vault.UpdatedAt).
		ToSql()
}

func buildGetVaultQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(vaultColumns...).
		From(models.VaultRecord{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildListCredentialsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(credentialMaskedColumns...).
		From(models.CredentialRecord{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id ASC").
		ToSql()
}

func buildGetCredentialQuery(b sq.StatementBuilderType, userID int64, id string) (string, []any, error) {
	return b.Select(credentialColumns...).
		From(models.CredentialRecord{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertCredentialQuery(b sq.StatementBuilderType, rec models.CredentialRecord) (string, []any, error) {
	return b.Insert(rec.TableName()).
		Columns(credentialColumns...).
		Values(
			rec.ID, rec.UserID, rec.Name, rec.Category, rec.ServiceURL,
			rec.HasUsername, rec.HasPassword, rec.HasNotes, rec.HasTOTP,
			rec.CustomFieldCount, rec.Payload, rec.CreatedAt, rec.UpdatedAt,
		).
		ToSql()
}

func buildUpdateCredentialQuery(b sq.StatementBuilderType, rec models.CredentialRecord) (string, []any, error) {
	return b.Update(rec.TableName()).
		Set("name", rec.Name).
		Set("category", rec.Category).
		Set("service_url", rec.ServiceURL).
		Set("has_username", rec.HasUsername).
		Set("has_password", rec.HasPassword).
		Set("has_notes", rec.HasNotes).
		Set("has_totp", rec.HasTOTP).
		Set("custom_field_count", rec.CustomFieldCount).
		Set("payload", rec.Payload).
		Set("updated_at", rec.UpdatedAt).
		Where(sq.Eq{"user_id": rec.UserID}).
		Where(sq.Eq{"id": rec.ID}).
		ToSql()
}

func buildDeleteCredentialQuery(b sq.StatementBuilderType, userID int64, id string) (string, []any, error) {
	return b.Delete(models.CredentialRecord{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"id": id}).
		ToSql()
}

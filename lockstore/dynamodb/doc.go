// Package dynamodb stores locked selections as DynamoDB items.
//
// Table schema:
//   - Partition key: scope (string), e.g. a scene or file identifier
//   - Sort key: key (string), the lock store key
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name meshdist-locks \
//	  --attribute-definitions AttributeName=scope,AttributeType=S AttributeName=key,AttributeType=S \
//	  --key-schema AttributeName=scope,KeyType=HASH AttributeName=key,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package dynamodb
